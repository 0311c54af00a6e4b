package xlsx

import "github.com/wellwatch/drywell-etl/internal/domain"

// Loader adapts ReadShortageRows to the pipeline's TableLoader.
type Loader struct{}

func (Loader) ShortageRows(path string) ([]domain.RawShortageRow, error) {
	return ReadShortageRows(path)
}
