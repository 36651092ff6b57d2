package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pawhub/pet-adoption-platform/internal/billing"
)

type createOrderRequest struct {
	UserID uuid.UUID `json:"user_id"`
	PlanID uuid.UUID `json:"plan_id"`
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

func listPlansHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plans, err := svc.ListPlans(r.Context())
		if err != nil {
			respondBillingError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, plans)
	}
}

func createOrderHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := svc.CreateOrder(r.Context(), req.UserID, req.PlanID)
		if err != nil {
			respondBillingError(w, err)
			return
		}
		writeSuccess(w, http.StatusCreated, created)
	}
}

func listOrdersHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, byUser, ok := queryUUID(w, r, "user_id")
		if !ok {
			return
		}

		if byUser {
			list, err := svc.ListOrdersByUser(r.Context(), userID)
			if err != nil {
				respondBillingError(w, err)
				return
			}
			writeSuccess(w, http.StatusOK, list)
			return
		}

		list, err := svc.ListOrders(r.Context())
		if err != nil {
			respondBillingError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, list)
	}
}

func updateOrderHandler(svc *billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req updateOrderRequest
		if !decodeBody(w, r, &req) {
			return
		}

		updated, err := svc.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			respondBillingError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, updated)
	}
}

func respondBillingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, billing.ErrInvalidOrderStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, billing.ErrPlanNotFound),
		errors.Is(err, billing.ErrOrderNotFound),
		errors.Is(err, billing.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
