package entities

// Catalog is the year -> module -> topic index of bank references. A bank
// reference is a path to a JSON file, relative to the data directory.
type Catalog map[string]map[string]map[string]string

// BankRef identifies one bank within the catalog together with the
// coordinates it was found under.
type BankRef struct {
	Year   string
	Module string
	Topic  string
	Path   string
}

// Resolve looks up the bank reference for the given coordinates.
func (c Catalog) Resolve(year, module, topic string) (string, bool) {
	modules, ok := c[year]
	if !ok {
		return "", false
	}
	topics, ok := modules[module]
	if !ok {
		return "", false
	}
	path, ok := topics[topic]
	return path, ok
}
