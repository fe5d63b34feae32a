package routes

import (
	"equiptrack/app"
	"equiptrack/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.NewSrv(a)
	vendorCtl := controllers.NewVendorController(s)
	modelCtl := controllers.NewModelController(s)
	equipCtl := controllers.NewEquipmentController(s)
	applicantCtl := controllers.NewApplicantController(s)
	loanCtl := controllers.NewLoanController(s)
	invCtl := controllers.NewInventoryController(s)

	authMW := app.AuthRequired(a.ActorSessions())
	importLockMW := app.ImportLock(a.RDB, a.Config.ImportLockTTL)

	api := r.Group("/api", authMW)

	// ------------------------------
	// 厂商
	// ------------------------------
	vendors := api.Group("/vendors")
	{
		vendors.GET("", vendorCtl.List)
		vendors.GET("/:id", vendorCtl.Get)
		vendors.POST("", app.RequireCap("vendor:write"), vendorCtl.Create)
		vendors.PUT("/:id", app.RequireCap("vendor:write"), vendorCtl.Update)
		vendors.DELETE("/:id", app.RequireCap("vendor:write"), vendorCtl.Delete)
	}

	// ------------------------------
	// 型号 + 型号下的设备
	// ------------------------------
	mdl := api.Group("/models")
	{
		mdl.GET("", modelCtl.List) // ?category=
		mdl.GET("/:id", modelCtl.Get)
		mdl.POST("", app.RequireCap("model:write"), modelCtl.Create)
		mdl.PUT("/:id", app.RequireCap("model:write"), modelCtl.Update)
		mdl.POST("/:id/equipment", app.RequireCap("equipment:write"), equipCtl.CreateUnderModel)
	}

	// ------------------------------
	// 设备
	// ------------------------------
	equip := api.Group("/equipment")
	{
		equip.GET("/available", equipCtl.Available) // ?modelStatus=
		equip.GET("/:id", equipCtl.Get)
		equip.PUT("/:id", app.RequireCap("equipment:write"), equipCtl.Update)
		equip.POST("/:id/checks", app.RequireCap("inventory:check"), invCtl.ManualCheck)
	}

	// ------------------------------
	// 借用人
	// ------------------------------
	applicants := api.Group("/applicants")
	{
		applicants.GET("", applicantCtl.List)
		applicants.GET("/:id", applicantCtl.Get)
		applicants.POST("", app.RequireCap("applicant:write"), applicantCtl.Create)
		applicants.PUT("/:id", app.RequireCap("applicant:write"), applicantCtl.Update)
	}

	// ------------------------------
	// 借还台账
	// ------------------------------
	loans := api.Group("/loans")
	{
		loans.GET("", loanCtl.List) // ?applicantId=&equipmentId=&status=open|returned
		loans.POST("", app.RequireCap("loan:create"), loanCtl.Lend)
		loans.POST("/:id/return", app.RequireCap("loan:create"), loanCtl.Return)
		loans.PUT("/:id", app.RequireCap("loan:admin"), loanCtl.Update)
		loans.DELETE("/:id", app.RequireCap("loan:admin"), loanCtl.Delete)
	}

	// ------------------------------
	// 年度盘点
	// ------------------------------
	inv := api.Group("/inventories")
	{
		inv.GET("", invCtl.ListYears)
		inv.GET("/:year", invCtl.Status)
		inv.POST("/:year/import", app.RequireCap("inventory:import"), importLockMW, invCtl.Import)
		inv.POST("/checks", app.RequireCap("inventory:check"), invCtl.RecordCheck)
		inv.DELETE("/checks/:id", app.RequireCap("inventory:admin"), invCtl.DeleteCheck)
	}
}
