package wrapper

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// readPageDims reads the size of every page with pdfcpu, which resolves
// boxes inherited from the page tree.
func readPageDims(rs io.ReadSeeker) (sizes []PageSize, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &WrapperError{
				Library: LibraryPDFCPU,
				Op:      "page_dims",
				Err:     fmt.Errorf("panic while reading page boxes: %v", p),
			}
		}
	}()

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, &WrapperError{Library: LibraryPDFCPU, Op: "page_dims", Err: err}
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, &WrapperError{
			Library: LibraryPDFCPU,
			Op:      "page_dims",
			Err:     fmt.Errorf("failed to read PDF context: %w", err),
		}
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, &WrapperError{
			Library: LibraryPDFCPU,
			Op:      "page_dims",
			Err:     fmt.Errorf("failed to ensure page count: %w", err),
		}
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, &WrapperError{
			Library: LibraryPDFCPU,
			Op:      "page_dims",
			Err:     fmt.Errorf("failed to read page dimensions: %w", err),
		}
	}

	sizes = make([]PageSize, len(dims))
	for i, d := range dims {
		sizes[i] = PageSize{Width: d.Width, Height: d.Height}
	}
	return sizes, nil
}
