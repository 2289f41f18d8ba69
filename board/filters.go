package board

import (
	"github.com/amonks/agency/internal/localstore"
	"github.com/amonks/agency/task"
)

// ActiveTabKey remembers which tab the task views opened last.
var ActiveTabKey = localstore.NewKey("tasks_active_tab", string(task.TabRegular))

// FilterKeys are the typed store keys of one tab's filter scope.
type FilterKeys struct {
	Role    localstore.Key[string]
	User    localstore.Key[int]
	Project localstore.Key[string]
	Date    localstore.Key[string]
	Status  localstore.Key[string]
}

var filterKeys = map[task.Tab]FilterKeys{
	task.TabRegular:   newFilterKeys(task.TabRegular),
	task.TabRecurring: newFilterKeys(task.TabRecurring),
}

func newFilterKeys(tab task.Tab) FilterKeys {
	prefix := "filter_tasks_" + string(tab) + "_"
	return FilterKeys{
		Role:    localstore.NewKey(prefix+"role", ""),
		User:    localstore.NewKey(prefix+"user", 0),
		Project: localstore.NewKey(prefix+"project", ""),
		Date:    localstore.NewKey(prefix+"date", ""),
		Status:  localstore.NewKey(prefix+"status", string(task.DefaultStatusFilter(tab))),
	}
}

// KeysFor returns the filter scope keys of tab. Unknown tabs use the regular scope.
func KeysFor(tab task.Tab) FilterKeys {
	if keys, ok := filterKeys[tab]; ok {
		return keys
	}
	return filterKeys[task.TabRegular]
}

// LoadFilter reads tab's filter scope. Values that no longer parse fall back
// to the scope defaults.
func LoadFilter(store *localstore.Store, tab task.Tab) task.Filter {
	keys := KeysFor(tab)
	filter := task.DefaultFilter(tab)

	if role, err := task.ParseRole(localstore.Get(store, keys.Role)); err == nil {
		filter.Role = role
	}
	filter.UserID = localstore.Get(store, keys.User)
	filter.Project = localstore.Get(store, keys.Project)
	if bucket, err := task.ParseDateBucket(localstore.Get(store, keys.Date)); err == nil {
		filter.Date = bucket
	}
	if status, err := task.ParseStatus(localstore.Get(store, keys.Status)); err == nil {
		filter.Status = status
	}
	return filter
}

// SaveFilter writes every field of filter into tab's scope.
func SaveFilter(store *localstore.Store, tab task.Tab, filter task.Filter) {
	keys := KeysFor(tab)
	localstore.Set(store, keys.Role, string(filter.Role))
	localstore.Set(store, keys.User, filter.UserID)
	localstore.Set(store, keys.Project, filter.Project)
	localstore.Set(store, keys.Date, string(filter.Date))
	localstore.Set(store, keys.Status, string(filter.Status))
}

// LoadActiveTab returns the remembered tab.
func LoadActiveTab(store *localstore.Store) task.Tab {
	tab, err := task.ParseTab(localstore.Get(store, ActiveTabKey))
	if err != nil {
		return task.TabRegular
	}
	return tab
}

// SaveActiveTab remembers tab.
func SaveActiveTab(store *localstore.Store, tab task.Tab) {
	localstore.Set(store, ActiveTabKey, string(tab))
}
