package mongostore

import (
	"magicmover/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func toDecimal128(w kernel.Weight) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(w.String())
}

func fromDecimal128(d primitive.Decimal128) (kernel.Weight, error) {
	value, err := decimal.NewFromString(d.String())
	if err != nil {
		return kernel.Weight{}, err
	}
	return kernel.NewWeight(value)
}
