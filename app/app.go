package app

type ApplicationInfo struct {
	Tag       string `json:"tag" description:"get tag name"`
	CommitID  string `json:"commitID" description:"git commit ID."`
	ReleaseAt string `json:"releaseAt" description:"build date"`
}

const (
	EnvProd = "prod"
	EnvTest = "test"
	EnvDev  = "dev"
)

const (
	BaseConfigFile = "app.toml"
	DefaultAppName = "mediamtx-sync"
)

var (
	// App name
	Name string
	//Debug mode
	Debug bool
	//Current host name
	Hostname string
	//Env name
	EnvName = EnvDev
	//App git info
	Info ApplicationInfo
)
