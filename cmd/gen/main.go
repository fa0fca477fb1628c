package main

import (
	"cargomatch/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.LSPProfileModel{},
		model.ContainerTypeModel{},
		model.ContainerModel{},
		model.BookingModel{},
		model.ShipmentModel{},
		model.ShipmentStatusHistoryModel{},
		model.ComplaintModel{},
		model.NotificationModel{},
		model.UserDeviceModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
