package opts

import (
	"github.com/scriptkit/scriptkit/pkg/config"
	"github.com/scriptkit/scriptkit/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.Config
	Printer *status.Printer
}

// RenameDefaults returns the rename config section, never nil.
func (o *RootOpts) RenameDefaults() *config.RenameConfig {
	if o.Config != nil && o.Config.Rename != nil {
		return o.Config.Rename
	}
	return &config.RenameConfig{}
}

// FetchDefaults returns the fetch config section, never nil.
func (o *RootOpts) FetchDefaults() *config.FetchConfig {
	if o.Config != nil && o.Config.Fetch != nil {
		return o.Config.Fetch
	}
	return &config.FetchConfig{}
}

// ReportDefaults returns the report config section, never nil.
func (o *RootOpts) ReportDefaults() *config.ReportConfig {
	if o.Config != nil && o.Config.Report != nil {
		return o.Config.Report
	}
	return &config.ReportConfig{}
}
