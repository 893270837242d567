package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"tillpoint/core/cache"
	catalogRepo "tillpoint/model/repository/catalog"
	"tillpoint/service/accounting"
	"tillpoint/service/catalog"
)

// DB is the shared handle jobs run against. The cron command sets it before
// the scheduler starts; jobs skip their run when it is nil.
var DB *gorm.DB

// DailySummaryJob logs yesterday's profit and loss rollup. An optional first
// argument overrides the day as YYYY-MM-DD.
func DailySummaryJob(args ...string) {
	if DB == nil {
		log.Println("dailysummary: no database handle, skipping")
		return
	}
	day := time.Now().AddDate(0, 0, -1)
	if len(args) > 0 && args[0] != "" {
		parsed, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
		if err != nil {
			log.Printf("dailysummary: bad day argument %q: %v", args[0], err)
			return
		}
		day = parsed
	}
	summary, err := accounting.SummarizeDay(DB, day)
	if err != nil {
		log.Printf("dailysummary: %v", err)
		return
	}
	log.Printf("dailysummary %s: %d sales, revenue=%s expenses=%s profit=%s",
		day.Format("2006-01-02"), summary.SaleCount,
		summary.Revenue.StringFixed(2), summary.Expenses.StringFixed(2), summary.Profit.StringFixed(2))
}

// CacheWarmJob refreshes the product list cache and the search index.
func CacheWarmJob(args ...string) {
	if DB == nil {
		log.Println("cachewarm: no database handle, skipping")
		return
	}
	products, err := catalogRepo.NewProductRepository(DB).List()
	if err != nil {
		log.Printf("cachewarm: list products: %v", err)
		return
	}
	cache.GetInstance().Set("product:list", products, 3600, []string{"catalog"})

	indexed, err := catalog.IndexAllProducts(DB)
	if err != nil {
		log.Printf("cachewarm: search index: %v", err)
		return
	}
	log.Printf("cachewarm: %d products cached, %d indexed", len(products), indexed)
}
