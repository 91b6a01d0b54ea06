package domain

type Repository interface {
	ListInstalled(kind Kind) ([]CatalogEntry, error)

	IsInstalled(key string) bool

	Install(entry CatalogEntry) error

	Uninstall(key string) error

	GetTabs() []TabConfig

	SetTabs(tabs []TabConfig) error

	GetActiveTab() Tab

	SetActiveTab(tab Tab) error

	GetSortBy() SortOrder

	SetSortBy(sort SortOrder) error

	GetVisual() VisualConfig

	SetVisual(visual VisualConfig) error
}
