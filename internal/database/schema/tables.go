// Package schema holds the table definitions applied at startup.
package schema

// TableDefinitions contains all the SQL statements to create the database tables.
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS signature_templates (
		id UUID PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		html_content TEXT NOT NULL,
		tree JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_signature_templates_updated_at ON signature_templates (updated_at DESC)`,
}

// TableNames lists the tables in creation order
var TableNames = []string{
	"signature_templates",
}
