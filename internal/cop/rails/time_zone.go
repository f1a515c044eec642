package rails

// TimeZoneAcceptedMethods are the methods that make a time value zone-aware
// when chained after a conversion (Rails/TimeZone's list). Rails/Date in
// flexible style accepts `x.to_time.<one of these>`.
var TimeZoneAcceptedMethods = []string{
	"in_time_zone",
	"utc",
	"getlocal",
	"xmlschema",
	"iso8601",
	"jisx0301",
	"rfc3339",
	"httpdate",
	"to_i",
	"to_f",
}
