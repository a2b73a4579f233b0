// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "FluWatch")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/fluwatch.log")

	viper.SetDefault("detection.minconfidence", 0.0)
	viper.SetDefault("detection.headcritical", 43.0)
	viper.SetDefault("detection.headfever", 42.5)
	viper.SetDefault("detection.headhealthymin", 40.0)
	viper.SetDefault("detection.bodyhealthymin", 37.5)
	viper.SetDefault("detection.bodyhealthymax", 41.0)
	viper.SetDefault("detection.bodyspreadcritical", 6.0)
	viper.SetDefault("detection.legcold", 38.0)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "fluwatch.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "fluwatch")
	viper.SetDefault("output.mysql.password", "secret")
	viper.SetDefault("output.mysql.database", "fluwatch")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.debug", false)
	viper.SetDefault("webserver.log.enabled", true)
	viper.SetDefault("webserver.log.path", "logs/webserver.log")

	viper.SetDefault("dashboard.trenddays", 7)
	viper.SetDefault("dashboard.cachettl", 30)
}
