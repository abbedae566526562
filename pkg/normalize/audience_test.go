package normalize

import (
	"testing"

	dm "github.com/iWorld-y/search_radar/pkg/model"
)

func deviceBatch() dm.RawPayload {
	return dm.RawPayload{
		Succeeded: true,
		Rows: []dm.MetricRow{
			{Keys: []string{"MOBILE"}, Clicks: 100, Impressions: 2000, CTR: 0.05},
			{Keys: []string{"DESKTOP"}, Clicks: 60, Impressions: 1500, CTR: 0.04},
		},
	}
}

func countryBatch() dm.RawPayload {
	return dm.RawPayload{
		Succeeded: true,
		Rows: []dm.MetricRow{
			{Keys: []string{"usa"}, Clicks: 80, Impressions: 1800},
			{Keys: []string{"jpn"}, Clicks: 30, Impressions: 900},
		},
	}
}

func TestAudience_Disambiguation(t *testing.T) {
	device, country := Audience(deviceBatch(), countryBatch())

	if !device.HasData || len(device.Audience.Devices) != 2 {
		t.Fatalf("device = %+v", device)
	}
	if device.Audience.Devices[0].Key != "MOBILE" {
		t.Errorf("Devices[0] = %q", device.Audience.Devices[0].Key)
	}
	if !country.HasData || len(country.Audience.Countries) != 2 {
		t.Fatalf("country = %+v", country)
	}
}

// 判别只看首行维度值，与两路输入的到达顺序无关
func TestAudience_OrderIndependent(t *testing.T) {
	device, country := Audience(countryBatch(), deviceBatch())

	if !device.HasData || device.Audience.Devices[0].Key != "MOBILE" {
		t.Errorf("设备批次出现在第二路时仍应归为设备数据: %+v", device)
	}
	if !country.HasData || country.Audience.Countries[0].Key != "usa" {
		t.Errorf("country = %+v", country)
	}
}

// 首行维度值大小写不敏感
func TestIsDeviceBatch_CaseInsensitive(t *testing.T) {
	p := dm.RawPayload{Succeeded: true, Rows: []dm.MetricRow{{Keys: []string{"mobile"}}}}
	if !IsDeviceBatch(p) {
		t.Errorf("IsDeviceBatch(mobile) = false, want true")
	}
}

// 不在设备集合内的一律按国家处理，哪怕维度值是乱码。
// 这是已知的判别盲区，测试固化现状
func TestIsDeviceBatch_GarbageFallsToCountry(t *testing.T) {
	p := dm.RawPayload{Succeeded: true, Rows: []dm.MetricRow{{Keys: []string{"???"}}}}
	if IsDeviceBatch(p) {
		t.Errorf("乱码维度不应判为设备数据")
	}

	_, country := Audience(p, dm.RawPayload{})
	if !country.HasData || country.Audience.Countries[0].Key != "???" {
		t.Errorf("乱码批次应落入国家桶: %+v", country)
	}
}

func TestAudience_CountriesTop15(t *testing.T) {
	rows := make([]dm.MetricRow, 30)
	for i := range rows {
		rows[i] = dm.MetricRow{Keys: []string{"c"}, Clicks: 1}
	}
	_, country := Audience(dm.RawPayload{Succeeded: true, Rows: rows}, dm.RawPayload{})

	if len(country.Audience.Countries) != 15 {
		t.Errorf("len(Countries) = %d, want 15", len(country.Audience.Countries))
	}
}

func TestAudience_BothMissing(t *testing.T) {
	device, country := Audience(dm.RawPayload{ErrorMessage: "timeout"}, dm.RawPayload{})

	if device.HasData || country.HasData {
		t.Errorf("空输入不应产出数据")
	}
	if device.ErrorMessage != "timeout" {
		t.Errorf("device.ErrorMessage = %q", device.ErrorMessage)
	}
	if device.Audience.Devices == nil || country.Audience.Countries == nil {
		t.Errorf("降级记录集合字段为 nil")
	}
}
