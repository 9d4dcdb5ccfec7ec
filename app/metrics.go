package app

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 台账操作计数：op = issue/return/lost/recover/paid，outcome = ok/domain_error/error
var LedgerOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "toolport_ledger_ops_total",
	Help: "Ledger operations by operation and outcome.",
}, []string{"op", "outcome"})

var OverdueSweeps = promauto.NewCounter(prometheus.CounterOpts{
	Name: "toolport_overdue_sweeps_total",
	Help: "Completed overdue sweep runs.",
})

var OverdueMarked = promauto.NewCounter(prometheus.CounterOpts{
	Name: "toolport_overdue_marked_total",
	Help: "Delegations reclassified to Overdue by the sweeper.",
})

func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
