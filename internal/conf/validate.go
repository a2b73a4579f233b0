// conf/validate.go settings validation
package conf

import (
	"github.com/fluwatch/fluwatch-go/internal/errors"
)

// ValidateSettings checks the loaded settings for inconsistencies that would
// make the application misbehave at runtime.
func ValidateSettings(settings *Settings) error {
	if settings.Detection.MinConfidence < 0 || settings.Detection.MinConfidence > 1 {
		return errors.Newf("detection.minconfidence must be within [0,1], got %f", settings.Detection.MinConfidence).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if settings.Detection.HeadFever > settings.Detection.HeadCritical {
		return errors.Newf("detection.headfever (%f) must not exceed detection.headcritical (%f)",
			settings.Detection.HeadFever, settings.Detection.HeadCritical).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if settings.Detection.BodyHealthyMin > settings.Detection.BodyHealthyMax {
		return errors.Newf("detection.bodyhealthymin (%f) must not exceed detection.bodyhealthymax (%f)",
			settings.Detection.BodyHealthyMin, settings.Detection.BodyHealthyMax).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		return errors.Newf("only one of output.sqlite and output.mysql may be enabled").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if settings.WebServer.Enabled && settings.WebServer.Port == "" {
		return errors.Newf("webserver.port must be set when the web server is enabled").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if settings.Dashboard.TrendDays <= 0 {
		settings.Dashboard.TrendDays = 7
	}
	if settings.Dashboard.CacheTTL <= 0 {
		settings.Dashboard.CacheTTL = 30
	}

	return nil
}
