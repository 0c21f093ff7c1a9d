package mediamtx

import (
	"gopkg.in/yaml.v2"
)

//Config is the mediamtx.yml document. Global settings are fixed constants of
//the deployment; only the paths section is derived from camera records.
//Field order matches the order operators expect to read in the file.
type Config struct {
	LogLevel        string   `yaml:"logLevel"`
	LogDestinations []string `yaml:"logDestinations"`
	API             bool     `yaml:"api"`
	APIAddress      string   `yaml:"apiAddress"`

	RTSPAddress  string `yaml:"rtspAddress"`
	RTSPSAddress string `yaml:"rtspsAddress"`

	RTMPAddress    string `yaml:"rtmpAddress"`
	RTMPEncryption string `yaml:"rtmpEncryption"`

	HLSAddress         string `yaml:"hlsAddress"`
	HLSAlwaysRemux     bool   `yaml:"hlsAlwaysRemux"`
	HLSVariant         string `yaml:"hlsVariant"`
	HLSSegmentCount    int    `yaml:"hlsSegmentCount"`
	HLSSegmentDuration string `yaml:"hlsSegmentDuration"`
	HLSPartDuration    string `yaml:"hlsPartDuration"`

	WebRTCAddress               string        `yaml:"webrtcAddress"`
	WebRTCAllowOrigins          []string      `yaml:"webrtcAllowOrigins"`
	WebRTCLocalUDPAddress       string        `yaml:"webrtcLocalUDPAddress"`
	WebRTCLocalTCPAddress       string        `yaml:"webrtcLocalTCPAddress"`
	WebRTCIPsFromInterfaces     bool          `yaml:"webrtcIPsFromInterfaces"`
	WebRTCIPsFromInterfacesList []string      `yaml:"webrtcIPsFromInterfacesList"`
	WebRTCICEServers2           []interface{} `yaml:"webrtcICEServers2"`

	//paths keep insertion order so the written file follows record order
	Paths yaml.MapSlice `yaml:"paths"`
}

//PathConf is a single path (route) definition.
type PathConf struct {
	Source                     string `yaml:"source,omitempty"`
	RTSPTransport              string `yaml:"rtspTransport,omitempty"`
	SourceOnDemand             *bool  `yaml:"sourceOnDemand,omitempty"`
	SourceOnDemandStartTimeout string `yaml:"sourceOnDemandStartTimeout,omitempty"`
	SourceOnDemandCloseAfter   string `yaml:"sourceOnDemandCloseAfter,omitempty"`
	RunOnDemand                string `yaml:"runOnDemand,omitempty"`
	RunOnDemandRestart         bool   `yaml:"runOnDemandRestart,omitempty"`
	RunOnDemandStartTimeout    string `yaml:"runOnDemandStartTimeout,omitempty"`
	RunOnDemandCloseAfter      string `yaml:"runOnDemandCloseAfter,omitempty"`
}

//AddPath appends a path definition, replacing an existing entry of the same
//name in place. Returns true when an entry was replaced.
func (c *Config) AddPath(name string, conf *PathConf) bool {
	for i, item := range c.Paths {
		if item.Key == name {
			c.Paths[i].Value = conf
			return true
		}
	}
	c.Paths = append(c.Paths, yaml.MapItem{Key: name, Value: conf})
	return false
}

//Path returns the definition for a path name, or nil when absent.
func (c *Config) Path(name string) *PathConf {
	for _, item := range c.Paths {
		if item.Key == name {
			return item.Value.(*PathConf)
		}
	}
	return nil
}

//PathNames returns all path names in insertion order.
func (c *Config) PathNames() []string {
	names := make([]string, 0, len(c.Paths))
	for _, item := range c.Paths {
		names = append(names, item.Key.(string))
	}
	return names
}

func boolPtr(v bool) *bool {
	return &v
}
