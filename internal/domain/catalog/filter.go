// Package catalog reglas de búsqueda y normalización del catálogo de productos.
package catalog

import (
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/pkg/textutil"
)

// Filter devuelve los productos de la categoría indicada (slug exacto, vacío = todas)
// cuyo nombre, descripción o SKU contienen query sin distinguir mayúsculas ni acentos.
// Conserva el orden de entrada.
func Filter(products []*entity.Product, categorySlug, query string) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if categorySlug != "" && p.Category != categorySlug {
			continue
		}
		if !Matches(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Matches indica si el producto coincide con el texto de búsqueda.
func Matches(p *entity.Product, query string) bool {
	return textutil.Contains(p.Name, query) ||
		textutil.Contains(p.Description, query) ||
		textutil.Contains(p.SKU, query)
}

// NormalizeSlug convierte un nombre o slug libre en el slug canónico de categoría.
func NormalizeSlug(s string) string {
	return textutil.Slugify(s)
}
