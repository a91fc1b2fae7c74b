package main

import (
	"backoffice/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.SequenceModel{},
		model.ChangeLogModel{},
		model.CustomerModel{},
		model.BillerModel{},
		model.BillerContactModel{},
		model.ItemGroupModel{},
		model.ItemModel{},
		model.SupplierModel{},
		model.PromoModel{},
		model.PromoRedemptionModel{},
		model.VoucherModel{},
		model.RewardRuleModel{},
		model.ConversionRateModel{},
		model.LedgerEntryModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/database/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
