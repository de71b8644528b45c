package config

type BackendInfo struct {
	ID          string
	Name        string
	Description string
	Persistent  bool
	DefaultPath string
}

var Backends = []BackendInfo{
	{
		ID:          "file",
		Name:        "Files",
		Description: "One JSON file per key",
		Persistent:  true,
		DefaultPath: "~/.config/companion/data/store",
	},
	{
		ID:          "sqlite",
		Name:        "SQLite",
		Description: "Single database file, no cgo",
		Persistent:  true,
		DefaultPath: "~/.config/companion/data/companion.db",
	},
	{
		ID:          "memory",
		Name:        "Memory",
		Description: "Forgets everything on exit",
	},
}

func GetBackend(id string) *BackendInfo {
	for _, b := range Backends {
		if b.ID == id {
			return &b
		}
	}
	return nil
}
