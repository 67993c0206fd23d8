package routers

import (
	"net/http"

	"FoodOrder/middleware"
	"FoodOrder/models"
)

func key(method, path string) string {
	return method + " " + path
}

// Policy lists every protected route and the role it needs. Anything not
// listed here is public.
var Policy = middleware.Policy{
	key(http.MethodPost, "/account/logout"): middleware.RoleAny,
	key(http.MethodGet, "/account/me"):      middleware.RoleAny,

	key(http.MethodGet, "/cart/:userId"):               middleware.RoleAny,
	key(http.MethodPost, "/cart/add"):                  middleware.RoleAny,
	key(http.MethodDelete, "/cart/remove/:cartItemId"): middleware.RoleAny,
	key(http.MethodDelete, "/cart/clear/:userId"):      middleware.RoleAny,
	key(http.MethodPut, "/cart/update"):                middleware.RoleAny,

	key(http.MethodPost, "/order"):                  models.RoleCustomer,
	key(http.MethodGet, "/order"):                   models.RoleCustomer,
	key(http.MethodGet, "/order/:id"):               models.RoleCustomer,
	key(http.MethodDelete, "/order/softdelete/:id"): models.RoleCustomer,
	key(http.MethodPost, "/restaurant/:id/reviews"): models.RoleCustomer,

	key(http.MethodPost, "/restaurant"):       models.RoleAdmin,
	key(http.MethodPut, "/restaurant/:id"):    models.RoleAdmin,
	key(http.MethodDelete, "/restaurant/:id"): models.RoleAdmin,

	key(http.MethodPost, "/admin/register-admin"):          models.RoleAdmin,
	key(http.MethodPost, "/admin/add-restaurant"):          models.RoleAdmin,
	key(http.MethodGet, "/admin/restaurants"):              models.RoleAdmin,
	key(http.MethodPut, "/admin/update-restaurant/:id"):    models.RoleAdmin,
	key(http.MethodDelete, "/admin/delete-restaurant/:id"): models.RoleAdmin,
	key(http.MethodPost, "/admin/add-menuitem"):            models.RoleAdmin,
	key(http.MethodGet, "/admin/menuitems"):                models.RoleAdmin,
	key(http.MethodPut, "/admin/update-menuitem/:id"):      models.RoleAdmin,
	key(http.MethodDelete, "/admin/delete-menuitem/:id"):   models.RoleAdmin,
	key(http.MethodGet, "/admin/orders"):                   models.RoleAdmin,
	key(http.MethodPut, "/admin/update-order/:id"):         models.RoleAdmin,
	key(http.MethodDelete, "/admin/delete-order/:id"):      models.RoleAdmin,
	key(http.MethodGet, "/admin/order-history/:id"):        models.RoleAdmin,
}
