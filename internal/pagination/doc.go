// Package pagination provides the page-number button strip shown under
// the album table, plus the page arithmetic shared by the table and the
// list command.
//
// A Strip holds no state of its own:
//
//	strip := pagination.Strip{
//	    Max:     t.PageCount(),
//	    Current: t.Page(),
//	    OnPrev:  t.PrevPage,
//	    OnNext:  t.NextPage,
//	    OnClick: t.SetPage,
//	    Styles:  pagination.DefaultStripStyles(),
//	}
//	fmt.Println(strip.View()) // ‹ 1 2 3 ›
package pagination
