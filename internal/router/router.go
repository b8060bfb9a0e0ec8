package router

import (
	"net/http"
	"strings"

	"tienda-api/internal/handler"
	"tienda-api/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	purchaseHandler *handler.PurchaseHandler,
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	brandHandler *handler.BrandHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	registerResource(mux, "/api/compras", resourceHandlers{
		getAll:  purchaseHandler.GetAll,
		create:  purchaseHandler.Create,
		getByID: purchaseHandler.GetByID,
		update:  purchaseHandler.Update,
		delete:  purchaseHandler.Delete,
	})

	registerResource(mux, "/api/productos", resourceHandlers{
		getAll:  productHandler.GetAll,
		create:  productHandler.Create,
		getByID: productHandler.GetByID,
		update:  productHandler.Update,
		delete:  productHandler.Delete,
	})

	registerResource(mux, "/api/categorias", resourceHandlers{
		getAll:   categoryHandler.GetAll,
		create:   categoryHandler.Create,
		getByID:  categoryHandler.GetByID,
		update:   categoryHandler.Update,
		delete:   categoryHandler.Delete,
		products: categoryHandler.Products,
	})

	registerResource(mux, "/api/marcas", resourceHandlers{
		getAll:   brandHandler.GetAll,
		create:   brandHandler.Create,
		getByID:  brandHandler.GetByID,
		update:   brandHandler.Update,
		delete:   brandHandler.Delete,
		products: brandHandler.Products,
	})

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}

// resourceHandlers holds the handler funcs of one REST resource. The
// products func, when set, serves the GET {base}/{id}/productos listing.
type resourceHandlers struct {
	getAll   http.HandlerFunc
	create   http.HandlerFunc
	getByID  http.HandlerFunc
	update   http.HandlerFunc
	delete   http.HandlerFunc
	products http.HandlerFunc
}

// registerResource wires collection and element routes for one resource onto
// the mux, dispatching on method and path shape.
func registerResource(mux *http.ServeMux, base string, h resourceHandlers) {
	routeHandler := func(w http.ResponseWriter, r *http.Request) {
		isCollection := r.URL.Path == base || r.URL.Path == base+"/"

		switch {
		case isCollection && r.Method == http.MethodGet:
			h.getAll(w, r)
		case isCollection && r.Method == http.MethodPost:
			h.create(w, r)
		case isCollection:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		case h.products != nil && r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/productos"):
			h.products(w, r)
		case r.Method == http.MethodGet:
			h.getByID(w, r)
		case r.Method == http.MethodPut:
			h.update(w, r)
		case r.Method == http.MethodDelete:
			h.delete(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Register both with and without trailing slash
	mux.HandleFunc(base, routeHandler)
	mux.HandleFunc(base+"/", routeHandler)
}
