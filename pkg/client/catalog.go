package client

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/mardecortez-api/pkg/textutil"
)

// Catalog lo que necesita el compositor de órdenes para mostrarse.
type Catalog struct {
	Products   []Product
	Suppliers  []Supplier
	Categories []Category
}

// LoadCatalog pide productos, proveedores y categorías a la vez y espera las tres respuestas.
// Si alguna falla devuelve ese error y cancela las demás.
func (c *Client) LoadCatalog(ctx context.Context) (*Catalog, error) {
	var out Catalog
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Products, err = c.Products(ctx, ProductQuery{})
		return err
	})
	g.Go(func() (err error) {
		out.Suppliers, err = c.Suppliers(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Categories, err = c.Categories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// FilterProducts filtra en memoria: slug exacto y texto sin distinguir mayúsculas ni acentos
// en nombre, descripción o SKU. Filtros vacíos no restringen.
func FilterProducts(products []Product, categorySlug, q string) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if categorySlug != "" && p.Category != categorySlug {
			continue
		}
		if !textutil.Contains(p.Name, q) && !textutil.Contains(p.Description, q) && !textutil.Contains(p.SKU, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}
