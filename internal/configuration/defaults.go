package configuration

import "fmt"

// EnvFileName is the conventional name of the optional defaults file, looked
// up in the working directory and the user's home directory.
const EnvFileName = ".fops.env"

// SystemEnvFile is the optional machine-wide defaults file; the per-user
// files override its values.
const SystemEnvFile = "/etc/fops.env"

// Environment keys understood by [Handler.LoadDefaults].
const (
	KeyWorkers     = "FOPS_WORKERS"
	KeyOverwrite   = "FOPS_OVERWRITE"
	KeyInteractive = "FOPS_INTERACTIVE"
	KeyPreserve    = "FOPS_PRESERVE"
	KeyHidden      = "FOPS_HIDDEN"
	KeyVerbose     = "FOPS_VERBOSE"
	KeyUI          = "FOPS_UI"
)

// Defaults is the principal structure holding flag defaults for the
// command-line layer.
type Defaults struct {
	Workers     int  // content search workers; 0 defers to the search layer
	Overwrite   bool // replace existing destinations without asking
	Interactive bool // prompt before replacing existing destinations
	Preserve    bool // carry permissions and timestamps on copies
	Hidden      bool // include hidden files and directories
	Verbose     bool // per-item progress output
	UI          bool // full-screen progress view on batch transfers
}

// NewDefaults returns a pointer to a new [Defaults] with the built-in values.
func NewDefaults() *Defaults {
	return &Defaults{}
}

// LoadDefaults reads the given env files and overlays their values over the
// built-in defaults. With no filenames, the built-in defaults are returned.
func (c *Handler) LoadDefaults(filenames ...string) (*Defaults, error) {
	defaults := NewDefaults()

	if len(filenames) == 0 {
		return defaults, nil
	}

	envMap, err := c.ReadGeneric(filenames...)
	if err != nil {
		return nil, fmt.Errorf("(config) %w", err)
	}

	if workers := c.MapKeyToInt(envMap, KeyWorkers); workers > 0 {
		defaults.Workers = workers
	}

	defaults.Overwrite = c.MapKeyToBool(envMap, KeyOverwrite)
	defaults.Interactive = c.MapKeyToBool(envMap, KeyInteractive)
	defaults.Preserve = c.MapKeyToBool(envMap, KeyPreserve)
	defaults.Hidden = c.MapKeyToBool(envMap, KeyHidden)
	defaults.Verbose = c.MapKeyToBool(envMap, KeyVerbose)
	defaults.UI = c.MapKeyToBool(envMap, KeyUI)

	return defaults, nil
}
