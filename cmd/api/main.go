package main

import (
	"fmt"
	"net/http"

	"github.com/peoplekit/payroll-backend-go/internal/config"
	appHTTP "github.com/peoplekit/payroll-backend-go/internal/handler/http"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/cron"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/database"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/jwt"
	"github.com/peoplekit/payroll-backend-go/internal/repository/postgresql"
	activityService "github.com/peoplekit/payroll-backend-go/internal/service/activity"
	authService "github.com/peoplekit/payroll-backend-go/internal/service/auth"
	companyService "github.com/peoplekit/payroll-backend-go/internal/service/company"
	dtrService "github.com/peoplekit/payroll-backend-go/internal/service/dtr"
	employeeService "github.com/peoplekit/payroll-backend-go/internal/service/employee"
	payrollService "github.com/peoplekit/payroll-backend-go/internal/service/payroll"
	userService "github.com/peoplekit/payroll-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	dtrRepo := postgresql.NewDtrRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := authService.NewAuthService(db, userRepo, jwtSvc, jwtRepo)
	userSvc := userService.NewUserService(userRepo, employeeRepo)
	companySvc := companyService.NewCompanyService(companyRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, companyRepo)
	dtrSvc := dtrService.NewDtrService(db, dtrRepo, employeeRepo, activityRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, dtrRepo, employeeRepo, activityRepo)
	activitySvc := activityService.NewActivityService(activityRepo)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	dtrHandler := appHTTP.NewDtrHandler(dtrSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	activityHandler := appHTTP.NewActivityHandler(activitySvc)

	router := appHTTP.NewRouter(
		jwtSvc,
		authHandler,
		userHandler,
		companyHandler,
		employeeHandler,
		dtrHandler,
		payrollHandler,
		activityHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewDtrJobs(dtrRepo, activityRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
