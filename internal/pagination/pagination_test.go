package pagination

import "testing"

func TestPageRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var p PageRequest
		p.Defaults()
		if p.Page != 1 || p.PageSize != DefaultPageSize {
			t.Errorf("expected page 1 size %d, got page %d size %d", DefaultPageSize, p.Page, p.PageSize)
		}
		if p.Offset() != 0 {
			t.Errorf("expected offset 0, got %d", p.Offset())
		}
	})

	t.Run("offset", func(t *testing.T) {
		p := PageRequest{Page: 3, PageSize: 20}
		if p.Offset() != 40 {
			t.Errorf("expected offset 40, got %d", p.Offset())
		}
	})
}
