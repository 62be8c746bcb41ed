package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the dashboard API routes.
func RegisterRoutes(api huma.API, links *LinkHandler, metrics *AnalyticsHandler, codes *QRHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-links",
		Method:      http.MethodGet,
		Path:        "/links",
		Summary:     "List short links",
		Description: "Returns the whole link collection, newest first.",
		Tags:        []string{"Links"},
	}, links.ListLinks)

	huma.Register(api, huma.Operation{
		OperationID:   "create-link",
		Method:        http.MethodPost,
		Path:          "/links",
		Summary:       "Create short link",
		Description:   "Creates a short link from a draft, generating an alias when none is requested.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
	}, links.CreateLink)

	huma.Register(api, huma.Operation{
		OperationID: "edit-link",
		Method:      http.MethodPatch,
		Path:        "/links/{id}",
		Summary:     "Edit short link",
		Description: "Updates alias, destination, or expiry. Omitted fields stay unchanged.",
		Tags:        []string{"Links"},
	}, links.EditLink)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-link",
		Method:        http.MethodDelete,
		Path:          "/links/{id}",
		Summary:       "Delete short link",
		Description:   "Removes a link and frees its alias. Deleting an absent id succeeds.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusNoContent,
	}, links.DeleteLink)

	huma.Register(api, huma.Operation{
		OperationID: "follow-link",
		Method:      http.MethodPost,
		Path:        "/links/{id}/follow",
		Summary:     "Follow short link",
		Description: "Records a click and returns the destination for the caller to open. Expired links are refused.",
		Tags:        []string{"Links"},
	}, links.FollowLink)

	huma.Register(api, huma.Operation{
		OperationID: "get-analytics",
		Method:      http.MethodGet,
		Path:        "/analytics",
		Summary:     "Weekly click analytics",
		Description: "Summary metrics plus the current week's daily click series and chart coordinates.",
		Tags:        []string{"Analytics"},
	}, metrics.GetAnalytics)

	huma.Register(api, huma.Operation{
		OperationID: "get-activity",
		Method:      http.MethodGet,
		Path:        "/activity",
		Summary:     "Recent activity",
		Description: "Recent link activity captured from the event stream, newest first.",
		Tags:        []string{"Analytics"},
	}, metrics.GetActivity)

	huma.Register(api, huma.Operation{
		OperationID: "get-link-qr",
		Method:      http.MethodGet,
		Path:        "/links/{id}/qr",
		Summary:     "Download QR code",
		Description: "Renders the link's short URL as a scannable image named after the alias.",
		Tags:        []string{"Links"},
	}, codes.GetQRCode)
}
