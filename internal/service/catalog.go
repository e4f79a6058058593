package service

// CatalogService is a thin read facade over the catalog repository for
// the delivery layer's selection keyboards.
type CatalogService struct {
	repository CatalogRepository
}

func NewCatalogService(repository CatalogRepository) *CatalogService {
	return &CatalogService{repository: repository}
}

func (s *CatalogService) Years() []string {
	return s.repository.Years()
}

func (s *CatalogService) Modules(year string) []string {
	return s.repository.Modules(year)
}

func (s *CatalogService) Topics(year, module string) []string {
	return s.repository.Topics(year, module)
}

// MasterCount returns the size of the master list, used to tell whether
// the daily challenge is ready.
func (s *CatalogService) MasterCount() int {
	return len(s.repository.Master())
}
