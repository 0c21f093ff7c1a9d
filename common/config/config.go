package config

type (
	Config struct {
		Name         string       `mapstructure:"name"`
		ServerConfig ServerConfig `mapstructure:"server"`
		LogConfig    LogConfig    `mapstructure:"log"`
		Directory    Directory    `mapstructure:"directory"`
		Sync         Sync         `mapstructure:"sync"`
		Gateway      Gateway      `mapstructure:"gateway"`
		MQ           MQ           `mapstructure:"mq"`
	}

	ServerConfig struct {
		InternalHttpPort int `mapstructure:"internalHttpPort"`
	}

	LogConfig struct {
		LogFile string `mapstructure:"logFile"`
		ErrFile string `mapstructure:"errFile"`
	}

	//Directory holds connection settings for the camera directory service
	Directory struct {
		BaseURL        string `mapstructure:"baseURL"`
		Database       string `mapstructure:"database"`
		Username       string `mapstructure:"username"`
		Password       string `mapstructure:"password"`
		TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
	}

	Sync struct {
		ConfigPath          string `mapstructure:"configPath"`
		PollInterval        int    `mapstructure:"pollInterval"`
		AuthRetries         int    `mapstructure:"authRetries"`
		AuthRetryInterval   int    `mapstructure:"authRetryInterval"`
		InitialSyncRetries  int    `mapstructure:"initialSyncRetries"`
		InitialSyncInterval int    `mapstructure:"initialSyncInterval"`
	}

	Gateway struct {
		APIURL        string `mapstructure:"apiURL"`
		ReloadMode    string `mapstructure:"reloadMode"`
		Container     string `mapstructure:"container"`
		WebRTCBaseURL string `mapstructure:"webrtcBaseURL"`
		HLSBaseURL    string `mapstructure:"hlsBaseURL"`
	}

	MQ struct {
		KafkaBrokers string `mapstructure:"kafka_brokers"`
	}
)
