package handlers

import (
	"usdtstaking/internal/config"
	"usdtstaking/internal/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.GET("/plans", h.GetPlans)
		api.GET("/stats", h.GetStats)
	}

	authed := api.Group("")
	authed.Use(middleware.UserAuth(config.JWT_SECRET))
	{
		authed.POST("/positions", h.CreatePosition)
		authed.GET("/positions", h.GetPositions)
		authed.POST("/positions/:id/claim", h.ClaimReward)
		authed.POST("/positions/:id/withdraw", h.RequestPositionWithdrawal)
		authed.POST("/withdrawals", h.RequestWithdrawal)
		authed.GET("/withdrawals", h.GetWithdrawals)
		authed.GET("/referrals", h.GetReferrals)
		authed.GET("/activities", h.GetActivities)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.UserAuth(config.JWT_SECRET), middleware.AdminAuth())
	{
		admin.GET("/deposits", h.GetPendingDeposits)
		admin.POST("/deposits/:id/approve", h.ApproveDeposit)
		admin.POST("/deposits/:id/reject", h.RejectDeposit)
		admin.GET("/withdrawals", h.GetPendingWithdrawals)
		admin.POST("/withdrawals/:id/approve", h.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", h.RejectWithdrawal)
		admin.GET("/activities", h.GetAllActivities)
	}

	return r
}
