package router

import "net/http"

type RegistryRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type BranchRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	registryController RegistryRouteRegistrar,
	branchController BranchRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	if registryController != nil {
		registryController.RegisterRoutes(mux, authMiddleware)
	}
	if branchController != nil {
		branchController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}
