package attack

const sampleJSONReport = `{
  "latencies": {"total": 2000000000, "mean": 4000000, "50th": 3500000, "90th": 6000000,
    "95th": 7000000, "99th": 9000000, "max": 12000000, "min": 1000000},
  "bytes_in": {"total": 12500, "mean": 25},
  "bytes_out": {"total": 30000, "mean": 60},
  "earliest": "2024-03-01T10:00:00Z",
  "latest": "2024-03-01T10:00:04.9Z",
  "end": "2024-03-01T10:00:04.904Z",
  "duration": 4900000000,
  "wait": 4000000,
  "requests": 500,
  "rate": 100.2,
  "throughput": 99.8,
  "success": 1,
  "status_codes": {"200": 500},
  "errors": []
}`

const sampleTextReport = `Requests      [total, rate, throughput]  500, 100.20, 99.80
Latencies     [min, mean, 50, 90, 95, 99, max]  1ms, 4ms, 3.5ms, 6ms, 7ms, 9ms, 12ms
Success       [ratio]  100.00%
Status Codes  [code:count]  200:500
`
