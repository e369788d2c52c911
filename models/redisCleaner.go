package models

import (
	"github.com/margh00b/woodtrack_backend/utils"
)

type RedisCleaner interface {
	RemoveInstanceRedis() error // remove one
	RemoveAllRedis() error      // remove list
}

// remove both item & list
func RemoveRedisBoth[T RedisCleaner](obj T) error {
	if err := obj.RemoveInstanceRedis(); err != nil {
		return err
	}
	if err := obj.RemoveAllRedis(); err != nil {
		return err
	}
	return nil
}

func (obj Installer) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[Installer](obj.ID)
}

func (obj Installer) RemoveAllRedis() error {
	return utils.RemoveRedisList[Installer]()
}

func (obj Client) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[Client](obj.ID)
}

func (obj Client) RemoveAllRedis() error {
	return utils.RemoveRedisList[Client]()
}

func (obj Job) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[Job](obj.ID)
}

// job rows feed the dashboard summary, not a list cache
func (obj Job) RemoveAllRedis() error {
	return RemoveDashboardSummaryCache()
}
