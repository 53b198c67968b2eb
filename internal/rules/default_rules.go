package rules

// Accounts produced by the default rule set.
const (
	AccountSchoolRestaurant = "Expenses:Food:School-Restaurant"
	AccountSnack            = "Expenses:Food:Snack"
	AccountUtilities        = "Expenses:Living:Utilities"
	AccountUnclassified     = "Assets:FIXME"
)

// schoolRestaurants lists the dining-hall payee variants that appear on SJTU
// ecard bills.
var schoolRestaurants = map[string]bool{
	"统禾":     true,
	"闵一内档":   true,
	"闵一外档":   true,
	"闵二内档":   true,
	"闵二非餐饮":  true,
	"闵二外档":   true,
	"闵三外档":   true,
	"第二餐饮大楼": true,
	"第四餐饮大楼": true,
	"第五餐饮大楼": true,
}

func memberOf(set map[string]bool) func(string) bool {
	return func(payee string) bool { return set[payee] }
}

func equals(name string) func(string) bool {
	return func(payee string) bool { return payee == name }
}

// DefaultRules returns the built-in payee classification table, evaluated in
// order.
func DefaultRules() []Rule {
	return []Rule{
		{Match: memberOf(schoolRestaurants), Account: AccountSchoolRestaurant},
		{Match: equals("华联鸡蛋灌饼"), Account: AccountSnack},
		{Match: equals("六期水控"), Account: AccountUtilities},
		// An empty payee marks a bank transfer; it is parked on the asset
		// side until classified by hand.
		{Match: equals(""), Account: AccountUnclassified},
	}
}
