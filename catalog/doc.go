// Package catalog models the routable command catalog: skills grouping
// commands, exact ID lookup, and the searchable document projection
// consumed by the retrieval backends. Commands embed the MCP tool
// definition so catalogs can be populated directly from MCP tool lists.
package catalog
