package config

import (
	"fmt"
	"os"

	"github.com/f3rmion/churn/internal/churn"
	"gopkg.in/yaml.v3"
)

// recordFile mirrors churn.FormRecord with every field optional. Values are
// read as text so numeric fields coerce the same way form input does.
type recordFile struct {
	CustomerAge       *string `yaml:"customer_age"`
	Sex               *string `yaml:"sex"`
	Tenure            *string `yaml:"tenure"`
	ServiceUsageRate  *string `yaml:"service_usage_rate"`
	SupportCalls      *string `yaml:"support_calls"`
	BillingDelay      *string `yaml:"billing_delay"`
	PlanType          *string `yaml:"plan_type"`
	AgreementDuration *string `yaml:"agreement_duration"`
	TotalExpenditure  *string `yaml:"total_expenditure"`
	RecentActivity    *string `yaml:"recent_activity"`
}

// LoadRecord reads a customer record from a YAML file. Missing keys keep
// their default values.
func LoadRecord(path string) (churn.FormRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return churn.FormRecord{}, fmt.Errorf("reading record file: %w", err)
	}
	return ParseRecord(data)
}

// ParseRecord decodes a YAML customer record.
func ParseRecord(data []byte) (churn.FormRecord, error) {
	var f recordFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return churn.FormRecord{}, fmt.Errorf("parsing record file: %w", err)
	}

	r := churn.DefaultRecord()
	numbers := []struct {
		src *string
		dst *float64
	}{
		{f.CustomerAge, &r.CustomerAge},
		{f.Tenure, &r.Tenure},
		{f.ServiceUsageRate, &r.ServiceUsageRate},
		{f.SupportCalls, &r.SupportCalls},
		{f.BillingDelay, &r.BillingDelay},
		{f.TotalExpenditure, &r.TotalExpenditure},
		{f.RecentActivity, &r.RecentActivity},
	}
	for _, n := range numbers {
		if n.src != nil {
			*n.dst = churn.ParseNumber(*n.src)
		}
	}

	if f.Sex != nil {
		sex, err := churn.ParseSex(*f.Sex)
		if err != nil {
			return churn.FormRecord{}, err
		}
		r.Sex = sex
	}
	if f.PlanType != nil {
		plan, err := churn.ParsePlanType(*f.PlanType)
		if err != nil {
			return churn.FormRecord{}, err
		}
		r.PlanType = plan
	}
	if f.AgreementDuration != nil {
		agreement, err := churn.ParseAgreementDuration(*f.AgreementDuration)
		if err != nil {
			return churn.FormRecord{}, err
		}
		r.AgreementDuration = agreement
	}
	return r, nil
}

// SaveRecord writes r as YAML to path.
func SaveRecord(path string, r churn.FormRecord) error {
	out, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing record file: %w", err)
	}
	return nil
}
