package tui

type Category struct {
	ID          string
	Name        string
	Description string
}

var Categories = []Category{
	{ID: "logging", Name: "Logging", Description: "Log level and format"},
	{ID: "manifest", Name: "Manifest", Description: "Default tiapp.xml and search start directory"},
	{ID: "output", Name: "Output", Description: "Format for command results"},
	{ID: "history", Name: "History", Description: "Recently loaded manifests store"},
}

func GetCategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

func GetCategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}
