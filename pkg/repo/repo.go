package repo

import (
	"path/filepath"

	"github.com/odvcencio/vcsync/pkg/object"
)

// VCDirName is the repository metadata directory.
const VCDirName = ".vcsync"

// Repo is an opened repository: the storage-access capability handed
// explicitly to every operation that needs paths under the metadata
// directory.
type Repo struct {
	RootDir string        // working directory root
	VCDir   string        // .vcsync/ directory
	Store   *object.Store // content-addressed object store
}

// path joins segments under the metadata directory.
func (r *Repo) path(segments ...string) string {
	return filepath.Join(append([]string{r.VCDir}, segments...)...)
}
