package mocks

//go:generate mockgen -source=./../controller.go -destination=./controller_mock.go -package=mocks
