package main

import (
	"github.com/gin-gonic/gin"

	"ico-admin.backend/internal/interfaces/http/handlers"
)

// logoutRoute skips the session lookup so a stale session can still be closed
const logoutRoute = "/auth/adminlogout"

type routeDeps struct {
	authHandler        *handlers.AuthHandler
	adminHandler       *handlers.AdminHandler
	userHandler        *handlers.UserHandler
	transactionHandler *handlers.TransactionHandler
	authMiddleware     gin.HandlerFunc
	rateLimit          gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	auth := r.Group("/auth")
	{
		// Public
		auth.GET("/nonce/:addressId", d.authHandler.Nonce)
		auth.POST("/verifyNonce", d.authHandler.VerifyNonce)
		auth.GET("/getuser/:address", d.userHandler.GetUserByAddress)
		auth.POST("/adminlogin", d.rateLimit, d.authHandler.Login)
		auth.POST("/forgotpassword", d.rateLimit, d.authHandler.ForgotPassword)
		auth.POST("/checkOTP", d.rateLimit, d.authHandler.CheckOTP)
		auth.POST("/resetPassword", d.rateLimit, d.authHandler.ResetPassword)

		protected := auth.Group("")
		protected.Use(d.authMiddleware)
		{
			protected.POST("/adminlogout", d.authHandler.Logout)

			protected.POST("/createSubAdmins", d.adminHandler.CreateSubAdmin)
			protected.PUT("/updateSubAdmins/:id", d.adminHandler.UpdateSubAdmin)
			protected.GET("/getSubAdminById/:id", d.adminHandler.GetSubAdmin)
			protected.GET("/getSubAdminPermission/:id", d.adminHandler.GetSubAdminPermissions)
			protected.GET("/getAllSubAdmins", d.adminHandler.ListSubAdmins)
			protected.GET("/deleteSubAdmin/:id", d.adminHandler.DeleteSubAdmin)
			protected.GET("/getAllPermissions", d.adminHandler.ListAllPermissions)

			protected.POST("/getSaleGrapthValues", d.transactionHandler.SaleGraph)
			protected.POST("/getLineGrapthValues", d.transactionHandler.LineGraph)
			protected.GET("/getTotalMid", d.transactionHandler.TotalMid)
		}
	}

	users := r.Group("/users")
	users.Use(d.authMiddleware)
	{
		users.GET("/userList", d.userHandler.ListUsers)
		users.GET("/kycUserList", d.userHandler.ListKycUsers)
		users.GET("/acceptKyc/:id", d.rateLimit, d.userHandler.ApproveKyc)
		users.POST("/rejectKyc/:id", d.rateLimit, d.userHandler.RejectKyc)
		users.POST("/suspendUser/:id", d.rateLimit, d.userHandler.SuspendUser)
		users.POST("/twoFADisableUser/:id", d.rateLimit, d.userHandler.DisableTwoFactor)
		users.POST("/activeUser/:id", d.rateLimit, d.userHandler.ActivateUser)
		users.GET("/deleteUser/:id", d.rateLimit, d.userHandler.DeleteUser)
		users.GET("/deleteKyc/:id", d.rateLimit, d.userHandler.DeleteKyc)
		users.GET("/viewUser/:id", d.userHandler.ViewUser)
		users.GET("/viewKyc/:id", d.userHandler.ViewKyc)
		users.POST("/changePassword", d.authHandler.ChangePassword)
		users.GET("/getUsersCount", d.userHandler.GetUsersCount)
		users.PUT("/updateAccountSettings/:address", d.rateLimit, d.userHandler.UpdateAccountSettings)
	}

	transactions := r.Group("/transactions")
	transactions.Use(d.authMiddleware)
	{
		transactions.POST("/getTransactions", d.transactionHandler.ListTransactions)
		transactions.POST("/getSaleGrapthValues", d.transactionHandler.SaleGraph)
		transactions.POST("/getLineGrapthValues", d.transactionHandler.LineGraph)
		transactions.GET("/getTransactionByOrderId/:orderId", d.transactionHandler.GetByOrderID)
		transactions.GET("/getTokenCount", d.transactionHandler.TokenCount)
		transactions.GET("/getDashboardTransactionData", d.transactionHandler.DashboardData)
		transactions.GET("/checkSale", d.transactionHandler.CheckSale)
		transactions.GET("/getCurrentSale", d.transactionHandler.CurrentSale)
		transactions.GET("/wallet/:address", d.transactionHandler.ListByWallet)
		transactions.GET("/getTotalMid/:address", d.transactionHandler.TotalMidByWallet)
	}
}
