package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fortranov/sportproject/internal/plancache"
	"github.com/fortranov/sportproject/internal/planview"
	"github.com/fortranov/sportproject/internal/training"
)

func (s *IntegrationTestSuite) doRequest(method, path string, body any) (*http.Response, []byte) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, respBody
}

func (s *IntegrationTestSuite) createPlan(uin string, weeksAhead int, difficulty int) *training.TrainingPlan {
	competitionDate := training.DateOf(time.Now()).AddDays(7 * weeksAhead)
	resp, body := s.doRequest(http.MethodPost, "/plans", map[string]any{
		"uin":              uin,
		"competition_date": competitionDate.String(),
		"difficulty":       difficulty,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	var plan training.TrainingPlan
	s.Require().NoError(json.Unmarshal(body, &plan))
	return &plan
}

func (s *IntegrationTestSuite) TestPlanLifecycle() {
	ctx := context.Background()
	uin := "7701234567"

	resp, body := s.doRequest(http.MethodGet, "/plans/"+uin, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(string(body), "no training plan found, create a new one")

	created := s.createPlan(uin, 6, 650)
	s.Len(created.TrainingDays, 42)
	s.Equal(650, created.Difficulty)

	resp, body = s.doRequest(http.MethodGet, "/plans/"+uin+"/summary", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var summary planview.Summary
	s.Require().NoError(json.Unmarshal(body, &summary))
	s.Equal(6, summary.WeeksUntil)
	s.Equal(training.Intermediate, summary.Tier)
	s.Equal(42, summary.TrainingDays)
	s.InDelta(training.ReportedTotalHours(created.TrainingDays), summary.TotalHours, 0.0001)
	s.InDelta(training.Totals(created.TrainingDays).Total/6, summary.AverageWeeklyHours, 0.0001)

	// served from redis now
	exists, err := s.redisClient.Exists(ctx, plancache.Key(uin)).Result()
	s.Require().NoError(err)
	s.Equal(int64(1), exists)

	resp, body = s.doRequest(http.MethodGet, "/plans/"+uin+"/chart", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var chart planview.Chart
	s.Require().NoError(json.Unmarshal(body, &chart))
	s.Len(chart.Weekly, 6)
	s.Equal("Week 1", chart.Weekly[0].Label)

	resp, body = s.doRequest(http.MethodGet, "/plans/"+uin+"/calendar", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var grid planview.MonthView
	s.Require().NoError(json.Unmarshal(body, &grid))
	s.Len(grid.Cells, len(training.MonthGrid(training.DateOf(time.Now()))))
	s.Zero(len(grid.Cells) % 7)
	s.Equal(time.Now().Format(planview.MonthLayout), grid.Month)

	s.Equal(1, s.planService.gets())

	resp, body = s.doRequest(http.MethodDelete, "/plans/"+uin, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	exists, err = s.redisClient.Exists(ctx, plancache.Key(uin)).Result()
	s.Require().NoError(err)
	s.Equal(int64(0), exists)

	resp, _ = s.doRequest(http.MethodGet, "/plans/"+uin, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp, _ = s.doRequest(http.MethodDelete, "/plans/"+uin, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestCreatePlan_validation() {
	tomorrow := training.DateOf(time.Now()).AddDays(1).String()
	yesterday := training.DateOf(time.Now()).AddDays(-1).String()

	for _, tc := range []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"missing uin", map[string]any{"competition_date": tomorrow}, http.StatusBadRequest},
		{"date in the past", map[string]any{"uin": "1", "competition_date": yesterday}, http.StatusBadRequest},
		{"difficulty too high", map[string]any{"uin": "1", "competition_date": tomorrow, "difficulty": 1001}, http.StatusUnprocessableEntity},
	} {
		resp, body := s.doRequest(http.MethodPost, "/plans", tc.body)
		s.Equal(tc.status, resp.StatusCode, "%s: %s", tc.name, body)
	}
}

func (s *IntegrationTestSuite) TestCreatePlan_defaultDifficulty() {
	resp, body := s.doRequest(http.MethodPost, "/plans", map[string]any{
		"uin":              "5001",
		"competition_date": training.DateOf(time.Now()).AddDays(14).String(),
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	var plan training.TrainingPlan
	s.Require().NoError(json.Unmarshal(body, &plan))
	s.Equal(training.DefaultDifficulty, plan.Difficulty)
}

func (s *IntegrationTestSuite) TestRecreateInvalidatesCache() {
	uin := "3003"
	first := s.createPlan(uin, 2, 200)

	resp, _ := s.doRequest(http.MethodGet, "/plans/"+uin, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	second := s.createPlan(uin, 3, 900)
	s.NotEqual(first.ID, second.ID)

	resp, body := s.doRequest(http.MethodGet, "/plans/"+uin, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var got training.TrainingPlan
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Equal(second.ID, got.ID)
	s.Equal(900, got.Difficulty)
}

func (s *IntegrationTestSuite) TestDayDetail() {
	uin := "4004"
	today := training.DateOf(time.Now())
	s.planService.put(uin, &training.TrainingPlan{
		ID:              99,
		CompetitionDate: today.AddDays(30),
		Difficulty:      800,
		TrainingDays: []training.TrainingDay{
			{Date: today, SwimmingHours: 1, CyclingHours: 2, RunningHours: 1.5, TotalHours: 4.5},
		},
	})

	resp, body := s.doRequest(http.MethodGet, fmt.Sprintf("/plans/%s/days/%s", uin, today), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var detail planview.DayDetail
	s.Require().NoError(json.Unmarshal(body, &detail))
	s.Equal(training.VeryHigh, detail.Intensity)
	s.Equal("4.5h", detail.HoursLabel)

	resp, _ = s.doRequest(http.MethodGet, fmt.Sprintf("/plans/%s/days/%s", uin, today.AddDays(1)), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestInvalidPlanData() {
	uin := "6006"
	s.planService.put(uin, &training.TrainingPlan{
		ID:              5,
		CompetitionDate: training.DateOf(time.Now()).AddDays(10),
		Difficulty:      1500,
	})

	resp, body := s.doRequest(http.MethodGet, "/plans/"+uin+"/summary", nil)
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode, string(body))
}

func (s *IntegrationTestSuite) TestExportWorkbook() {
	uin := "8008"
	s.createPlan(uin, 3, 400)

	resp, body := s.doRequest(http.MethodGet, "/plans/"+uin+"/export.xlsx", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Disposition"), "attachment")

	f, err := excelize.OpenReader(bytes.NewReader(body))
	s.Require().NoError(err)
	defer f.Close()
	s.Contains(f.GetSheetList(), "Overview")
	s.Contains(f.GetSheetList(), "Calendar")
}

func (s *IntegrationTestSuite) TestPlanServiceDown() {
	s.planService.setDown(true)
	defer s.planService.setDown(false)

	resp, body := s.doRequest(http.MethodGet, "/plans/9009", nil)
	s.Equal(http.StatusBadGateway, resp.StatusCode)
	s.Contains(string(body), "plan service unavailable, retry")
}

func (s *IntegrationTestSuite) TestCreatePlan_rateLimited() {
	competitionDate := training.DateOf(time.Now()).AddDays(7).String()
	statuses := make([]int, 0, 7)
	for i := 0; i < 7; i++ {
		resp, _ := s.doRequest(http.MethodPost, "/plans", map[string]any{
			"uin":              fmt.Sprintf("rl-%d", i),
			"competition_date": competitionDate,
		})
		statuses = append(statuses, resp.StatusCode)
	}

	s.Equal(http.StatusCreated, statuses[0])
	s.Equal(http.StatusTooManyRequests, statuses[len(statuses)-1])
}

func (s *IntegrationTestSuite) TestDifficultyTiers() {
	resp, body := s.doRequest(http.MethodGet, "/difficulty/tiers", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var tiers []planview.TierInfo
	s.Require().NoError(json.Unmarshal(body, &tiers))
	s.Require().Len(tiers, 3)
	s.Equal(850, tiers[2].Preset)
}
