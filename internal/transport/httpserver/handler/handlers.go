package handler

import (
	"society-ledger/internal/domain/comms"
	"society-ledger/internal/domain/finance"
	"society-ledger/internal/domain/membership"
	"society-ledger/internal/domain/report"
	"society-ledger/pkg/logger"
)

type Handlers struct {
	Membership *membership.Service
	Finance    *finance.Service
	Comms      *comms.Service
	Reports    *report.Service
	log        logger.Logger
}

func New(membershipSvc *membership.Service, financeSvc *finance.Service, commsSvc *comms.Service, reports *report.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Membership: membershipSvc,
		Finance:    financeSvc,
		Comms:      commsSvc,
		Reports:    reports,
		log:        log,
	}
}
