package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/calvinalkan/deliverables/internal/config"
	"github.com/calvinalkan/deliverables/internal/store"
)

// App is the state shared by the commands of one invocation.
type App struct {
	Cfg   config.Config
	Now   func() time.Time
	Stdin io.Reader

	store *store.Store
}

// Store opens the data file on first use. Load and save failures surface as
// warnings on o and never abort the command.
func (a *App) Store(o *IO) *store.Store {
	if a.store == nil {
		path := a.Cfg.DataFile()
		a.store = store.Open(store.FileBlob{Path: path}, store.Options{
			OnError: func(err error) { warnStoreError(o, path, err) },
		})
	}

	return a.store
}

// path resolves p against the effective working directory.
func (a *App) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(a.Cfg.EffectiveCwd, p)
}

func warnStoreError(o *IO, path string, err error) {
	switch {
	case errors.Is(err, store.ErrLoad):
		o.Warn(err.Error(), fmt.Sprintf("continuing with an empty list; fix or move %s before the next change overwrites it", path))
	case errors.Is(err, store.ErrSave):
		o.Warn(err.Error(), fmt.Sprintf("the change was not saved; check that %s is writable", filepath.Dir(path)))
	default:
		o.Warn(err.Error(), "retry the command")
	}
}
