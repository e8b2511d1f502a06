package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

var _ repository.OwnerRepository = (*ownerRepo)(nil)
var _ repository.ProductRepository = (*productRepo)(nil)
var _ repository.CategoryRepository = (*categoryRepo)(nil)
var _ repository.CustomerRepository = (*customerRepo)(nil)
var _ repository.PetRepository = (*petRepo)(nil)
var _ repository.UserRepository = (*userRepo)(nil)

type ownerRepo struct{ s *Store }

func (r *ownerRepo) Create(o *entity.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.owners {
		if ex.Document == o.Document {
			return domain.ErrDuplicate
		}
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	r.s.owners[o.ID] = *o
	return nil
}

func (r *ownerRepo) GetByID(id string) (*entity.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.owners[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *ownerRepo) List(limit, offset int) ([]*entity.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Owner
	for _, o := range r.s.owners {
		o := o
		list = append(list, &o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

func (r *ownerRepo) Update(o *entity.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.owners[o.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.owners[o.ID] = *o
	return nil
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

func (r *productRepo) ListByOwner(ownerID string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.OwnerID == ownerID {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *productRepo) OwnerOfVariant(variantID string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.variants[variantID]
	if !ok {
		return "", nil
	}
	p, ok := r.s.products[v.ProductID]
	if !ok {
		return "", nil
	}
	return p.OwnerID, nil
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) InsertOrGet(name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	c := entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	r.s.categories[c.ID] = c
	return &c, nil
}

func (r *categoryRepo) List() ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Category
	for _, c := range r.s.categories {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *customerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Customer
	for _, c := range r.s.customers {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

type petRepo struct{ s *Store }

func (r *petRepo) Create(p *entity.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.pets[p.ID] = *p
	return nil
}

func (r *petRepo) GetByID(id string) (*entity.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.pets[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *petRepo) ListByCustomer(customerID string) ([]*entity.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Pet
	for _, p := range r.s.pets {
		if p.CustomerID == customerID {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.users {
		if ex.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}
