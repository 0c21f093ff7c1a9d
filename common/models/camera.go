package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

//DefaultBitrate is used when the directory record carries no target bitrate
const DefaultBitrate = 1000

const (
	DefaultWebRTCBaseURL = "http://localhost:8889"
	DefaultHLSBaseURL    = "http://localhost:8888"
)

var (
	pathPattern  = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)
	slugCollapse = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("mediamtx_path", func(fl validator.FieldLevel) bool {
		return ValidPath(fl.Field().String())
	})
	return v
}

//Camera is a camera record as served by the directory service. Records are
//fetched fresh on every poll and never stored locally.
type Camera struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	MediaMTXPath       string `json:"mediamtx_path" validate:"required,mediamtx_path"`
	RTSPURL            string `json:"rtsp_url" validate:"required"`
	TranscodingEnabled bool   `json:"transcoding_enabled"`
	TargetBitrate      int    `json:"target_bitrate"`
}

//Validate checks that the record carries a source url and a path satisfying
//the gateway path invariant: lowercase alphanumerics and hyphens, no
//leading/trailing hyphen. Invalid records are skipped by the renderer, not
//fatal.
func (c Camera) Validate() error {
	return validate.Struct(c)
}

//NormalizedBitrate returns the target bitrate in kbps, falling back to the
//default for absent or non-positive values.
func (c Camera) NormalizedBitrate() int {
	if c.TargetBitrate <= 0 {
		return DefaultBitrate
	}
	return c.TargetBitrate
}

//WebRTCURL returns the WHEP endpoint for browser playback of this camera.
func (c Camera) WebRTCURL(base string) string {
	if c.MediaMTXPath == "" {
		return ""
	}
	if base == "" {
		base = DefaultWebRTCBaseURL
	}
	return fmt.Sprintf("%s/%s/whep", strings.TrimRight(base, "/"), c.MediaMTXPath)
}

//HLSURL returns the HLS playlist endpoint for fallback playback.
func (c Camera) HLSURL(base string) string {
	if c.MediaMTXPath == "" {
		return ""
	}
	if base == "" {
		base = DefaultHLSBaseURL
	}
	return fmt.Sprintf("%s/%s/index.m3u8", strings.TrimRight(base, "/"), c.MediaMTXPath)
}

//ValidPath reports whether a path slug is acceptable as a gateway path
//segment: lowercase alphanumerics and hyphens, no leading/trailing hyphen.
func ValidPath(path string) bool {
	return pathPattern.MatchString(path)
}

//SlugFromName derives a URL-safe path slug from a camera name,
//e.g. "Camera 1" -> "camera-1".
func SlugFromName(name string) string {
	slug := slugCollapse.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
