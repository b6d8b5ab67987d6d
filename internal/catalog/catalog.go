// Package catalog holds the set of schedulable applications. A Catalog is
// an explicit immutable value passed into every operation that needs it,
// so there is no load-order hazard between building the application list
// and deriving views of it.
package catalog

import (
	"fmt"
	"strings"
)

// Application is one schedulable unit of work. WakeUpID doubles as the
// application's direct address in the message-index table.
type Application struct {
	Name     string
	WakeUpID int
	Priority int
	Group    string
}

// Symbol returns the wake-up message ID define symbol for the application.
func (a Application) Symbol() string {
	return strings.ToUpper(a.Name) + "_WAKEUP_MID"
}

// DuplicateWakeUpIDError reports two applications claiming the same
// wake-up ID.
type DuplicateWakeUpIDError struct {
	WakeUpID int
	First    string
	Second   string
}

func (e *DuplicateWakeUpIDError) Error() string {
	return fmt.Sprintf("catalog: applications %q and %q share wake-up ID %d", e.First, e.Second, e.WakeUpID)
}

// Catalog is the validated application list.
type Catalog struct {
	apps []Application
	byID map[int]Application
}

// New builds a Catalog, enforcing wake-up ID uniqueness across the list.
func New(apps []Application) (*Catalog, error) {
	c := &Catalog{
		apps: make([]Application, len(apps)),
		byID: make(map[int]Application, len(apps)),
	}
	copy(c.apps, apps)

	for _, app := range c.apps {
		if prior, ok := c.byID[app.WakeUpID]; ok {
			return nil, &DuplicateWakeUpIDError{WakeUpID: app.WakeUpID, First: prior.Name, Second: app.Name}
		}
		c.byID[app.WakeUpID] = app
	}
	return c, nil
}

// Applications returns the applications in catalog order.
func (c *Catalog) Applications() []Application {
	out := make([]Application, len(c.apps))
	copy(out, c.apps)
	return out
}

// Len returns the number of applications.
func (c *Catalog) Len() int { return len(c.apps) }

// ByWakeUpID looks up the application claiming the given wake-up ID.
func (c *Catalog) ByWakeUpID(id int) (Application, bool) {
	app, ok := c.byID[id]
	return app, ok
}

// ByName looks up an application by name.
func (c *Catalog) ByName(name string) (Application, bool) {
	for _, app := range c.apps {
		if app.Name == name {
			return app, true
		}
	}
	return Application{}, false
}

// Groups returns every distinct scheduling-group tag, deduplicated in
// first-seen order. An empty catalog yields an empty list.
func (c *Catalog) Groups() []string {
	var groups []string
	seen := make(map[string]bool)
	for _, app := range c.apps {
		if !seen[app.Group] {
			seen[app.Group] = true
			groups = append(groups, app.Group)
		}
	}
	return groups
}
