package mediamtx

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/gookit/goutil/strutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

//Fingerprint digests the configuration in canonical form: the document is
//round-tripped through an untyped map so yaml marshalling sorts every key.
//Two semantically identical documents digest identically regardless of the
//key order they were built or stored with.
func Fingerprint(cfg *Config) (string, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return canonicalDigest(raw)
}

//FingerprintFile digests the currently persisted document. A missing or
//unparsable file yields an empty fingerprint, which forces a rewrite rather
//than failing the sync.
func FingerprintFile(path string, logger *zap.Logger) string {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no existing config found, will create new one")
		} else {
			logger.Warn(fmt.Sprintf("failed to read existing config %s, forcing rewrite: %v", path, err))
		}
		return ""
	}
	digest, err := canonicalDigest(raw)
	if err != nil {
		logger.Warn(fmt.Sprintf("existing config %s is unparsable, forcing rewrite: %v", path, err))
		return ""
	}
	return digest
}

func canonicalDigest(raw []byte) (string, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return "", err
	}
	canonical, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return strutil.Md5(string(canonical)), nil
}
