// filepath: internal/models/settings.go
package models

import (
	"encoding/json"
	"fmt"
)

// Known setting keys. These are the only keys the application ever
// reads or writes; anything else is rejected at the service boundary.
const (
	SettingSchoolName    = "schoolName"
	SettingSchoolAddress = "schoolAddress"
	SettingSchoolLogo    = "schoolLogo"
	SettingReportFooter  = "reportFooter"
)

// SettingKind tags the payload type of a setting value.
type SettingKind string

const (
	SettingKindText     SettingKind = "text"     // single-line text
	SettingKindLongText SettingKind = "longtext" // free text, may span lines
	SettingKindImage    SettingKind = "image"    // embedded raster image (data URI)
)

// SettingValue is a tagged union over the small set of value kinds the
// settings table actually holds.
type SettingValue struct {
	Kind  SettingKind `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Image string      `json:"image,omitempty"`
}

// Setting is one key/value row of the settings table.
type Setting struct {
	Key   string       `json:"key"`
	Value SettingValue `json:"value"`
}

// KindForKey returns the value kind a known setting key carries.
func KindForKey(key string) (SettingKind, error) {
	switch key {
	case SettingSchoolName, SettingSchoolAddress:
		return SettingKindText, nil
	case SettingReportFooter:
		return SettingKindLongText, nil
	case SettingSchoolLogo:
		return SettingKindImage, nil
	default:
		return "", fmt.Errorf("unknown setting key: %s", key)
	}
}

// TextValue builds a text-kind value.
func TextValue(s string) SettingValue {
	return SettingValue{Kind: SettingKindText, Text: s}
}

// LongTextValue builds a longtext-kind value.
func LongTextValue(s string) SettingValue {
	return SettingValue{Kind: SettingKindLongText, Text: s}
}

// ImageValue builds an image-kind value from a data URI.
func ImageValue(dataURI string) SettingValue {
	return SettingValue{Kind: SettingKindImage, Image: dataURI}
}

// String returns the human-usable payload of the value.
func (v SettingValue) String() string {
	if v.Kind == SettingKindImage {
		return v.Image
	}
	return v.Text
}

// UnmarshalJSON accepts either the tagged form or a bare JSON string.
// Backups written by older versions stored settings as plain strings.
func (v *SettingValue) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*v = SettingValue{Kind: SettingKindText, Text: plain}
		return nil
	}

	type tagged SettingValue
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	switch t.Kind {
	case SettingKindText, SettingKindLongText, SettingKindImage:
	default:
		return fmt.Errorf("unknown setting value kind: %q", t.Kind)
	}
	*v = SettingValue(t)
	return nil
}
