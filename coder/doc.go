// Package coder selects the codec family for a program.
//
// Well-known native programs map to fixed-format codecs; every other program
// is served by the schema-driven codecs over its IDL:
//
//	c, err := coder.New(programID, schema, borsh.DefaultOptions())
//	data, err := c.Accounts.Encode("Widget", value)
//
// Further fixed formats can be added with Register.
package coder
