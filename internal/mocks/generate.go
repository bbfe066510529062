package mocks

//go:generate mockery --name EventStore --srcpkg github.com/blitzfilter/item-read/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
