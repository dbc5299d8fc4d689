// filepath: internal/initconfig/models.go
package initconfig

// InitConfig is the TOML document passed via --init_config. It seeds
// the teacher directory and the school branding on first start.
type InitConfig struct {
	School   InitSchool    `toml:"school"`
	Teachers []InitTeacher `toml:"teachers"`
}

// InitSchool carries the branding settings. Empty fields are skipped.
type InitSchool struct {
	Name         string `toml:"name"`
	Address      string `toml:"address"`
	ReportFooter string `toml:"report_footer"`
}

// InitTeacher is one teacher directory entry to create.
type InitTeacher struct {
	Name     string   `toml:"name"`
	Subjects []string `toml:"subjects"`
	Classes  []string `toml:"classes"`
}
