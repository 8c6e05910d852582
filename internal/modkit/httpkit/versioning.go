package httpkit

import (
	"strings"
)

// V1 is the only api version posdash serves today
const V1 = "v1"

// APIPrefix is the mount point for version, with or without a leading slash
func APIPrefix(version string) string {
	return "/api/" + strings.Trim(version, "/")
}

// MountAPI scopes mw to APIPrefix(version) and lets mount register routes there
//
//	httpkit.MountAPI(r, httpkit.V1, httpkit.CommonStack(), func(api httpkit.Router) {
//		dashboard.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []Middleware, mount func(Router)) {
	r.Route(APIPrefix(version), func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}

// MountAPIV1 mounts under /api/v1
func MountAPIV1(r Router, mw []Middleware, mount func(Router)) { MountAPI(r, V1, mw, mount) }
