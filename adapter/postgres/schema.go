package postgres

import (
	"fmt"
	"strings"
)

type Column struct {
	Name       string
	Type       string
	Constraint string
}

type Table struct {
	Name    string
	Columns []Column
}

type Index struct {
	Name  string
	Table string
	On    string
}

// Schema is one version of the store layout. Statements renders it as
// idempotent DDL; nothing is ever dropped.
type Schema struct {
	Version int
	Tables  []Table
	Indexes []Index
}

var CurrentSchema = Schema{
	Version: 1,
	Tables: []Table{
		{
			Name: "stories",
			Columns: []Column{
				{Name: "id", Type: "BIGINT", Constraint: "PRIMARY KEY"},
				{Name: "title", Type: "TEXT", Constraint: "NOT NULL DEFAULT ''"},
				{Name: "url", Type: "TEXT", Constraint: "NOT NULL DEFAULT ''"},
				{Name: "submitter", Type: "TEXT", Constraint: "NOT NULL"},
				{Name: "score", Type: "INTEGER", Constraint: "NOT NULL"},
				{Name: "submitted_at", Type: "TEXT", Constraint: "NOT NULL"},
			},
		},
		{
			Name: "vote_events",
			Columns: []Column{
				{Name: "id", Type: "BIGSERIAL", Constraint: "PRIMARY KEY"},
				{Name: "story_id", Type: "BIGINT", Constraint: "NOT NULL REFERENCES stories(id) ON DELETE CASCADE"},
				{Name: "is_like", Type: "BOOLEAN", Constraint: "NOT NULL"},
			},
		},
	},
	Indexes: []Index{
		{Name: "idx_stories_submitted_at", Table: "stories", On: "submitted_at DESC"},
		{Name: "idx_vote_events_story_id", Table: "vote_events", On: "story_id"},
	},
}

func (t Table) DDL() string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		def := c.Name + " " + c.Type
		if c.Constraint != "" {
			def += " " + c.Constraint
		}
		cols = append(cols, "    "+def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", t.Name, strings.Join(cols, ",\n"))
}

func (i Index) DDL() string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", i.Name, i.Table, i.On)
}

// Statements returns tables first (in dependency order) and then indexes.
func (s Schema) Statements() []string {
	out := make([]string, 0, len(s.Tables)+len(s.Indexes))
	for _, t := range s.Tables {
		out = append(out, t.DDL())
	}
	for _, i := range s.Indexes {
		out = append(out, i.DDL())
	}
	return out
}
