package dialect

// Builtin dialects. Registered at package load so connectors and the CLI can
// look them up by name without extra imports.
func init() {
	Register(&Dialect{
		Name:          "snowflake",
		DefaultSchema: "PUBLIC",
		Placeholder:   PlaceholderNamed,
	})
	Register(&Dialect{
		Name:          "postgres",
		DefaultSchema: "public",
		Placeholder:   PlaceholderDollar,
	})
	Register(&Dialect{
		Name:          "duckdb",
		DefaultSchema: "main",
		Placeholder:   PlaceholderQuestion,
	})
	Register(&Dialect{
		Name:          "sqlite",
		DefaultSchema: "main",
		Placeholder:   PlaceholderQuestion,
	})
}
