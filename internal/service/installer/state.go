package installer

// InstallState collects the answers that end up in the runtime .env.
type InstallState struct {
	EnvVars   map[string]string
	EnvPath   string
	Overwrite bool
}

func NewInstallState(envPath string, overwrite bool) *InstallState {
	return &InstallState{
		EnvVars:   make(map[string]string),
		EnvPath:   envPath,
		Overwrite: overwrite,
	}
}

func (s *InstallState) Get(key string) string {
	return s.EnvVars[key]
}
