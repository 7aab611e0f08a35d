package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/externalapi --output domain/externalapi --outpkg externalapimock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Locker --dir ../domain/externalapi --output domain/externalapi --outpkg externalapimock --filename locker_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/requestaudit --output domain/requestaudit --outpkg requestauditmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/mapping --output domain/mapping --outpkg mappingmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/team --output domain/team --outpkg teammock --filename repository_mock.go
