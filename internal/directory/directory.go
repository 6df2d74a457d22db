// Package directory serves users, branches and products from a YAML seed
// file. It doubles as the in-process inventory for completed stock requests.
package directory

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

var (
	ErrUnknownProduct    = errors.New("directory: unknown product")
	ErrInsufficientStock = errors.New("directory: stock cannot go negative")
)

// File is the on-disk layout of the directory seed.
type File struct {
	Users    []models.User    `yaml:"users"`
	Branches []models.Branch  `yaml:"branches"`
	Products []models.Product `yaml:"products"`
}

// Directory is a concurrency-safe lookup over the seed data.
type Directory struct {
	mu       sync.RWMutex
	users    map[string]models.User
	branches map[string]models.Branch
	products map[string]models.Product
}

// New builds a directory from already decoded data.
func New(f File) *Directory {
	d := &Directory{
		users:    make(map[string]models.User, len(f.Users)),
		branches: make(map[string]models.Branch, len(f.Branches)),
		products: make(map[string]models.Product, len(f.Products)),
	}
	for _, u := range f.Users {
		d.users[u.ID] = u
	}
	for _, b := range f.Branches {
		b.Members = append([]string(nil), b.Members...)
		d.branches[b.ID] = b
	}
	for _, p := range f.Products {
		d.products[p.ID] = p
	}
	return d
}

// Parse decodes a directory from YAML bytes.
func Parse(data []byte) (*Directory, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(File{}), nil
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("directory: decode: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return New(f), nil
}

// Load reads a directory seed file. An empty path yields an empty directory.
func Load(path string) (*Directory, error) {
	if path == "" {
		return New(File{}), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("directory: read %s: %w", path, err)
	}
	d, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("directory: %s: %w", path, err)
	}
	return d, nil
}

func (f File) validate() error {
	seen := make(map[string]bool)
	for _, u := range f.Users {
		if u.ID == "" {
			return fmt.Errorf("directory: user without id")
		}
		if seen["u:"+u.ID] {
			return fmt.Errorf("directory: duplicate user %q", u.ID)
		}
		seen["u:"+u.ID] = true
	}
	for _, b := range f.Branches {
		if b.ID == "" {
			return fmt.Errorf("directory: branch without id")
		}
		for _, m := range b.Members {
			if !seen["u:"+m] {
				return fmt.Errorf("directory: branch %q references unknown user %q", b.ID, m)
			}
		}
	}
	for _, p := range f.Products {
		if p.ID == "" {
			return fmt.Errorf("directory: product without id")
		}
	}
	return nil
}

// User implements workflow.UserDirectory.
func (d *Directory) User(id string) (models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	return u, ok
}

// Branch implements workflow.BranchDirectory.
func (d *Directory) Branch(id string) (models.Branch, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.branches[id]
	if ok {
		b.Members = append([]string(nil), b.Members...)
	}
	return b, ok
}

// Product implements workflow.ProductCatalog.
func (d *Directory) Product(id string) (models.Product, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.products[id]
	return p, ok
}

// Products lists the catalog ordered by id.
func (d *Directory) Products() []models.Product {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Product, 0, len(d.products))
	for _, p := range d.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AdjustStock implements workflow.Inventory.
func (d *Directory) AdjustStock(productID string, delta int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.products[productID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	if p.Stock+delta < 0 {
		return ErrInsufficientStock
	}
	p.Stock += delta
	d.products[productID] = p
	return nil
}
