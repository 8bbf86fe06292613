package main

// General API documentation for swaggo. Run `swag init -g cmd/cardiod/docs.go` to regenerate docs/.
//
// @title           cardiod API
// @version         1.0
// @description     Heart disease risk prediction from clinical data and ECG images.
//
// @contact.name   cardiod maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
