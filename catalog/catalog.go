package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Error values for catalog operations.
var (
	ErrEmptySkillName   = errors.New("skill name is required")
	ErrEmptyCommandName = errors.New("command name is required")
	ErrDuplicateCommand = errors.New("duplicate command id")
)

// Command is a callable command within a skill. It embeds the MCP tool
// definition so catalogs can be populated directly from MCP tool lists.
type Command struct {
	mcp.Tool

	// Skill is the owning skill's name, assigned at load time.
	Skill string

	// Tags are free-form labels used for search text.
	Tags []string
}

// ID returns the canonical command ID (skill.command).
func (c Command) ID() string {
	if c.Skill == "" {
		return c.Name
	}
	return c.Skill + "." + c.Name
}

// Skill groups related commands under a name and optional category.
type Skill struct {
	Name        string
	Description string

	// Category tags every command in the skill (e.g. "file_discovery");
	// hybrid search uses it for category-filtered retrieval.
	Category string

	Commands []Command
}

// Doc is the searchable projection of a command, consumed by the
// retrieval backends.
type Doc struct {
	ID       string
	Skill    string
	Name     string
	Category string

	// Text is the lowercased combined search text (name, skill,
	// description, tags).
	Text string
}

// Provider populates a catalog from discovered skills.
type Provider interface {
	Initialize(skills []Skill) error
}

// InMemoryCatalog stores commands in memory with exact ID lookup and a
// stable searchable document view. Re-initialization replaces all prior
// state and bumps the version.
type InMemoryCatalog struct {
	mu          sync.RWMutex
	commands    map[string]Command
	docs        []Doc
	skills      int
	version     uint64
	fingerprint string
}

// NewInMemoryCatalog creates an empty catalog.
func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{commands: make(map[string]Command)}
}

// Initialize replaces the catalog contents with the given skills.
// Validation failures leave the previous state intact.
func (c *InMemoryCatalog) Initialize(skills []Skill) error {
	commands := make(map[string]Command)
	var docs []Doc

	for _, skill := range skills {
		if strings.TrimSpace(skill.Name) == "" {
			return ErrEmptySkillName
		}
		for _, cmd := range skill.Commands {
			if strings.TrimSpace(cmd.Name) == "" {
				return fmt.Errorf("%w: skill %s", ErrEmptyCommandName, skill.Name)
			}
			cmd.Skill = skill.Name
			id := cmd.ID()
			if _, exists := commands[id]; exists {
				return fmt.Errorf("%w: %s", ErrDuplicateCommand, id)
			}
			commands[id] = cmd
			docs = append(docs, Doc{
				ID:       id,
				Skill:    skill.Name,
				Name:     cmd.Name,
				Category: skill.Category,
				Text:     buildDocText(skill, cmd),
			})
		}
	}

	c.mu.Lock()
	c.commands = commands
	c.docs = docs
	c.skills = len(skills)
	c.version++
	c.fingerprint = computeFingerprint(docs)
	c.mu.Unlock()
	return nil
}

// Lookup returns the command with the given canonical ID.
func (c *InMemoryCatalog) Lookup(id string) (Command, bool) {
	c.mu.RLock()
	cmd, ok := c.commands[id]
	c.mu.RUnlock()
	return cmd, ok
}

// Docs returns a copy of the searchable documents.
func (c *InMemoryCatalog) Docs() []Doc {
	c.mu.RLock()
	defer c.mu.RUnlock()
	docs := make([]Doc, len(c.docs))
	copy(docs, c.docs)
	return docs
}

// Len returns the number of commands in the catalog.
func (c *InMemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.commands)
}

// Version returns the catalog version, incremented on every Initialize.
func (c *InMemoryCatalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Fingerprint returns a stable hash of the catalog contents. It changes
// only when the searchable documents change, so callers can detect
// whether a re-initialization actually altered the catalog.
func (c *InMemoryCatalog) Fingerprint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fingerprint
}

// Stats describes the catalog for diagnostics.
type Stats struct {
	Commands    int
	Skills      int
	Version     uint64
	Fingerprint string
}

// Stats returns catalog statistics.
func (c *InMemoryCatalog) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Commands:    len(c.commands),
		Skills:      c.skills,
		Version:     c.version,
		Fingerprint: c.fingerprint,
	}
}

// buildDocText creates lowercased search text from skill and command fields.
func buildDocText(skill Skill, cmd Command) string {
	parts := []string{cmd.Name, skill.Name, cmd.Description, skill.Description}
	parts = append(parts, cmd.Tags...)
	if skill.Category != "" {
		parts = append(parts, skill.Category)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
